package tenant

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
)

const (
	RoleCeo        = "ceo"
	RoleDirector   = "director"
	RoleManajer    = "manajer"
	RoleSupervisor = "supervisor"
	RoleStaff      = "staff"
)

// Principal adalah identitas terautentikasi yang di-thread secara eksplisit
// ke setiap operasi core (tidak ada lookup session global).
type Principal struct {
	ID    string
	Role  string
	CEOID string
}

// ErrUnscopedPrincipal: non-CEO tanpa ceo_id. Ini pelanggaran invariant data,
// bukan kondisi yang bisa terjadi lewat request normal setelah registrasi.
var ErrUnscopedPrincipal = apperror.New(
	apperror.CodeIntegrityViolation,
	"Principal has no organization scope",
	http.StatusInternalServerError,
)

// Resolve menentukan tenant id (ceo_id) yang membatasi seluruh query.
// CEO memakai id-nya sendiri; role lain memakai ceo_id yang tersimpan.
func Resolve(p Principal) (string, error) {
	if p.Role == RoleCeo {
		return p.ID, nil
	}
	if p.CEOID == "" {
		return "", ErrUnscopedPrincipal
	}
	return p.CEOID, nil
}

func ValidRole(role string) bool {
	switch role {
	case RoleCeo, RoleDirector, RoleManajer, RoleSupervisor, RoleStaff:
		return true
	}
	return false
}

// AdminRoles adalah role yang melihat seluruh data organisasi pada listing
// project (selain itu hanya project yang diikuti).
func IsAdminRole(role string) bool {
	switch role {
	case RoleCeo, RoleDirector, RoleManajer:
		return true
	}
	return false
}
