package recipe

import "testing"

func TestRenderPathRecipeClone(t *testing.T) {
	r := RenderPathRecipe{
		Name:      "test",
		PassChain: []Entry{{ID: 1, Required: true}},
	}
	cp := r.Clone()
	cp.PassChain[0].Required = false

	if r.PassChain[0].Required != true {
		t.Fatal("Clone() aliased PassChain slice with the original")
	}
}
