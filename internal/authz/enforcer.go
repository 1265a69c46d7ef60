package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// NewEnforcer membangun enforcer casbin dengan model in-code dan memuat
// tabel kebijakan statis. Role pada aplikasi ini tetap (lima role), jadi
// tidak ada policy storage eksternal.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, rule := range policyTable {
		if _, err := e.AddPolicy(rule.role, rule.resource, rule.action); err != nil {
			return nil, err
		}
	}

	return e, nil
}
