package okr

import "math"

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// KeyResultProgress menghitung capaian KR dalam persen, dibulatkan satu
// desimal. Target nol berarti 0. Nilai di atas 100 tidak dipotong:
// over-achievement tampil apa adanya di level KR.
func KeyResultProgress(target, actual float64) float64 {
	if target == 0 {
		return 0
	}
	return round1(actual / target * 100)
}

// ObjectiveProgress adalah rata-rata tertimbang progress KR. Kontribusi
// tiap KR dipotong di 100 supaya satu KR yang jebol target tidak menutupi
// KR lain yang tertinggal. Tanpa KR, atau total bobot nol, hasilnya 0.
func ObjectiveProgress(keyResults []KeyResult) float64 {
	if len(keyResults) == 0 {
		return 0
	}

	var weightedSum, totalWeight float64
	for _, kr := range keyResults {
		progress := KeyResultProgress(kr.Target, kr.Actual)
		weightedSum += math.Min(progress, 100) * kr.Weight
		totalWeight += kr.Weight
	}

	if totalWeight == 0 {
		return 0
	}
	return round1(weightedSum / totalWeight)
}
