package kestrel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/kestrel"
)

// captureHook appends its tag to a shared trace, recording execution order.
func captureHook(trace *[]string, tag string) kestrel.Hook {
	return kestrel.HookFunc(func(_ *kestrel.Request, _ *kestrel.Response, _ any, _ kestrel.Params) error {
		*trace = append(*trace, tag)
		return nil
	})
}

func TestHookFunc_methodValue(t *testing.T) {
	t.Parallel()

	// A method value binds its receiver when the hook is built, not per call.
	f := &fish{trait: "wet"}
	hook := kestrel.HookFunc(f.setTrait)
	f.trait = "dry" // receiver is shared, not copied

	params := kestrel.Params{}
	require.NoError(t, hook.Before(nil, nil, nil, params))
	assert.Equal(t, "dry", params["fish"])
}

type fish struct {
	trait string
}

func (f *fish) setTrait(_ *kestrel.Request, _ *kestrel.Response, _ any, params kestrel.Params) error {
	params["fish"] = f.trait
	return nil
}

func TestBind(t *testing.T) {
	t.Parallel()

	setParam := func(_ *kestrel.Request, _ *kestrel.Response, _ any, params kestrel.Params, args ...any) error {
		params[args[0].(string)] = args[1]
		return nil
	}

	hook := kestrel.Bind(setParam, "bunnies", "fluffy")

	params := kestrel.Params{}
	require.NoError(t, hook.Before(nil, nil, nil, params))
	assert.Equal(t, "fluffy", params["bunnies"])

	// Bound arguments are reused on every invocation.
	params2 := kestrel.Params{}
	require.NoError(t, hook.Before(nil, nil, nil, params2))
	assert.Equal(t, "fluffy", params2["bunnies"])
}

func TestBuildChain_order(t *testing.T) {
	t.Parallel()

	var trace []string
	a := captureHook(&trace, "A")
	b := captureHook(&trace, "B")
	c := captureHook(&trace, "C")
	d := captureHook(&trace, "D")

	chain := kestrel.BuildChain([]kestrel.Hook{a, b}, []kestrel.Hook{c, d})
	require.Len(t, chain, 4)

	for _, h := range chain {
		require.NoError(t, h.Before(nil, nil, nil, nil))
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, trace)
}

func TestBuildChain_empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, kestrel.BuildChain(nil, nil))
}

func TestHooks_observePriorMutations(t *testing.T) {
	t.Parallel()

	bunnies := kestrel.HookFunc(func(_ *kestrel.Request, _ *kestrel.Response, _ any, params kestrel.Params) error {
		params["bunnies"] = "fuzzy"
		return nil
	})
	frogs := kestrel.HookFunc(func(_ *kestrel.Request, _ *kestrel.Response, _ any, params kestrel.Params) error {
		if params.Has("bunnies") {
			params["bunnies"] = "fluffy"
		}
		params["frogs"] = "not fluffy"
		return nil
	})

	params := kestrel.Params{}
	for _, h := range kestrel.BuildChain([]kestrel.Hook{bunnies, frogs}, nil) {
		require.NoError(t, h.Before(nil, nil, nil, params))
	}

	assert.Equal(t, "fluffy", params["bunnies"])
	assert.Equal(t, "not fluffy", params["frogs"])
}
