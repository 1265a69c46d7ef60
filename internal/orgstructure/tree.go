package orgstructure

import (
	"strings"

	"go-orgkit/internal/user"
)

// BuildTree menyusun forest departemen dari daftar flat. Anak dikelompokkan
// lewat indeks parent_id -> children; urutan saudara mengikuti urutan input
// (repo sudah mengurutkan created_at ASC).
func BuildTree(departments []Department, membersByDept map[string][]user.UserResponse) []DepartmentNode {
	childrenIndex := make(map[string][]Department)
	for _, d := range departments {
		parentKey := ""
		if d.ParentID != nil {
			parentKey = d.ParentID.String()
		}
		childrenIndex[parentKey] = append(childrenIndex[parentKey], d)
	}

	return buildNodes(childrenIndex, membersByDept, "")
}

func buildNodes(
	childrenIndex map[string][]Department,
	membersByDept map[string][]user.UserResponse,
	parentKey string,
) []DepartmentNode {
	nodes := make([]DepartmentNode, 0, len(childrenIndex[parentKey]))
	for _, d := range childrenIndex[parentKey] {
		id := d.ID.String()

		users := membersByDept[id]
		if users == nil {
			users = []user.UserResponse{}
		}

		node := DepartmentNode{
			ID:       id,
			Name:     d.Name,
			ParentID: parentKey,
			Users:    users,
			Children: buildNodes(childrenIndex, membersByDept, id),
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Flatten menjalankan DFS pre-order dan memberi prefix "— " sebanyak level
// untuk tampilan dropdown berindentasi.
func Flatten(nodes []DepartmentNode) []FlatDepartment {
	var out []FlatDepartment
	flattenInto(&out, nodes, 0)
	return out
}

func flattenInto(out *[]FlatDepartment, nodes []DepartmentNode, level int) {
	for _, n := range nodes {
		*out = append(*out, FlatDepartment{
			ID:       n.ID,
			Name:     strings.Repeat("— ", level) + n.Name,
			Level:    level,
			ParentID: n.ParentID,
		})
		flattenInto(out, n.Children, level+1)
	}
}

// ancestorChainContains menelusuri rantai parent dari startID ke atas dan
// melaporkan apakah targetID ada di dalamnya. Dipakai guard siklus saat
// reparenting; rantai putus (parent hilang) dianggap aman.
func ancestorChainContains(parents map[string]string, startID, targetID string) bool {
	seen := make(map[string]bool)
	for current := startID; current != ""; current = parents[current] {
		if current == targetID {
			return true
		}
		if seen[current] {
			return false
		}
		seen[current] = true
	}
	return false
}
