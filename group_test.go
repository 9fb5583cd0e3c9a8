package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/contract"
)

func TestGroup_prefixes_routes(t *testing.T) {
	t.Parallel()

	reg := contract.NewRegistry()
	v1 := reg.Group("/v1")

	contract.Register(v1, contract.Get("/todos", contract.NoParams, plainSel))
	contract.Register(v1, contract.BearerGet("/todos/{id}", todoParamsDec, authSel))

	spec := reg.Spec()
	assert.Contains(t, spec.Paths, "/v1/todos")
	assert.Contains(t, spec.Paths, "/v1/todos/{id}")
	assert.NotContains(t, spec.Paths, "/todos")
}

func TestGroup_tags(t *testing.T) {
	t.Parallel()

	reg := contract.NewRegistry()
	v1 := reg.Group("/v1", contract.WithGroupTags("v1"))

	contract.Register(v1, contract.Get("/todos", contract.NoParams, plainSel),
		contract.WithTags("todos"))

	op := reg.Spec().Paths["/v1/todos"]["get"]
	assert.Equal(t, []string{"v1", "todos"}, op.Tags)
}

func TestGroup_parameters_survive_prefixing(t *testing.T) {
	t.Parallel()

	reg := contract.NewRegistry()
	v1 := reg.Group("/v1")

	contract.Register(v1, contract.BearerGet("/todos/{id}", todoParamsDec, authSel))

	op := reg.Spec().Paths["/v1/todos/{id}"]["get"]
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "id", op.Parameters[0].Name)
}

func TestGroup_invalid_prefix_panics(t *testing.T) {
	t.Parallel()

	reg := contract.NewRegistry()

	tests := map[string]string{
		"relative":     "v1",
		"empty":        "",
		"token prefix": "/tenants/{tenant}",
	}
	for name, prefix := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, func() { reg.Group(prefix) })
		})
	}
}

func TestGroup_shares_registry(t *testing.T) {
	t.Parallel()

	reg := contract.NewRegistry()
	v1 := reg.Group("/v1")
	v2 := reg.Group("/v2")

	contract.Register(v1, contract.Get("/todos", contract.NoParams, plainSel))
	contract.Register(v2, contract.Get("/todos", contract.NoParams, plainSel))
	contract.Register(reg, contract.Get("/health", contract.NoParams, plainSel))

	spec := reg.Spec()
	assert.Len(t, spec.Paths, 3)
}
