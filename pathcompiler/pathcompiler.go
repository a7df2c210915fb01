// Package pathcompiler resolves a recipe.RenderPathRecipe into an
// ExecutionPlan: an ordered, validated list of compiled passes, plus
// accumulated warnings and errors.
package pathcompiler

import (
	"fmt"

	"github.com/shsengine/shs/pass"
	"github.com/shsengine/shs/recipe"
)

// ErrorKind classifies a compile-time error, per spec.md §7's recipe error
// taxonomy.
type ErrorKind string

// Standard error kinds.
const (
	ErrUnknownPassID     ErrorKind = "unknown_pass_id"
	ErrDuplicatePassID   ErrorKind = "duplicate_pass_id"
	ErrBackendIneligible ErrorKind = "backend_ineligible_required_pass"
	ErrUnresolvedInput   ErrorKind = "unresolved_input_semantic"
)

// CompileError is one accumulated recipe-level error.
type CompileError struct {
	Kind    ErrorKind
	PassID  pass.Id
	Detail  string
}

// Error implements the error interface.
func (e CompileError) Error() string {
	return fmt.Sprintf("pathcompiler: %s: pass %s: %s", e.Kind, e.PassID, e.Detail)
}

// CompileWarning is a non-fatal note accumulated during compilation.
type CompileWarning struct {
	PassID pass.Id
	Detail string
}

func (w CompileWarning) String() string {
	return fmt.Sprintf("pass %s: %s", w.PassID, w.Detail)
}

// CompiledPass is one entry in an ExecutionPlan's ordered pass list.
type CompiledPass struct {
	// Index is CompiledPass's position in the plan, used by downstream
	// planners to reference "earlier" passes without re-deriving order.
	Index    int
	ID       pass.Id
	PassID   pass.Id // alias kept for clarity at call sites; equals ID
	Required bool
	Contract pass.Contract
}

// ExecutionPlan is the compiler's output.
type ExecutionPlan struct {
	RecipeName    string
	Backend       recipe.Backend
	TechniqueMode pass.PathMode
	Passes        []CompiledPass
	Valid         bool
	Warnings      []CompileWarning
	Errors        []CompileError
}

// isCrossFrameSemantic reports whether a semantic is fed by the previous
// frame's history ring rather than an earlier pass in this chain. Inputs
// tagged with one of these never need an intra-chain producer: TAA reads
// MotionVectors/HistoryColor and the history manager reads HistoryDepth/
// HistoryMotion, all populated out of band by exec/temporal, per spec.md
// §9 (history is a cross-frame data ring, not an intra-chain producer).
func isCrossFrameSemantic(s pass.Semantic) bool {
	switch s {
	case pass.MotionVectors, pass.HistoryColor, pass.HistoryDepth, pass.HistoryMotion:
		return true
	default:
		return false
	}
}

// ByID returns the compiled pass with the given id and whether it is
// present in the plan.
func (p ExecutionPlan) ByID(id pass.Id) (CompiledPass, bool) {
	for _, cp := range p.Passes {
		if cp.ID == id {
			return cp, true
		}
	}
	return CompiledPass{}, false
}

// Compile resolves r against reg into an ExecutionPlan. Compile never
// returns a Go error; all failures are accumulated into the returned plan's
// Errors slice and Valid is set to false when any error was recorded.
// Optional unknown or path-ineligible passes produce a warning instead.
//
// Algorithm: walk r.PassChain in order. For each entry, look up its
// contract in reg. Passes whose id has already been compiled are
// duplicates and are dropped with an error (first occurrence wins).
// Passes ineligible for the backend or the recipe's resolved path mode are
// dropped: a warning if optional, an error if required. For every
// remaining pass, each declared input semantic must be produced by an
// earlier compiled pass or be a cross-frame semantic fed by the history
// ring (see isCrossFrameSemantic); unresolved inputs are one error each,
// and do not stop accumulation of further errors.
func Compile(r recipe.RenderPathRecipe, reg *pass.Registry) ExecutionPlan {
	plan := ExecutionPlan{
		RecipeName:    r.Name,
		Backend:       r.Backend,
		TechniqueMode: r.TechniqueMode,
	}

	seen := make(map[pass.Id]bool, len(r.PassChain))
	produced := make(map[pass.Semantic]bool)

	for _, entry := range r.PassChain {
		if seen[entry.ID] {
			plan.Errors = append(plan.Errors, CompileError{
				Kind:   ErrDuplicatePassID,
				PassID: entry.ID,
				Detail: "duplicate pass id in pass_chain; first occurrence kept",
			})
			continue
		}

		contract, ok := reg.Lookup(entry.ID)
		if !ok {
			if entry.Required {
				plan.Errors = append(plan.Errors, CompileError{
					Kind:   ErrUnknownPassID,
					PassID: entry.ID,
					Detail: fmt.Sprintf("no contract registered for backend %q", reg.Backend()),
				})
			} else {
				plan.Warnings = append(plan.Warnings, CompileWarning{PassID: entry.ID, Detail: "unknown pass id, skipped"})
			}
			continue
		}

		if !pass.EligibleForPathMode(entry.ID, r.TechniqueMode) {
			if entry.Required {
				plan.Errors = append(plan.Errors, CompileError{
					Kind:   ErrBackendIneligible,
					PassID: entry.ID,
					Detail: fmt.Sprintf("not eligible for path mode %q", r.TechniqueMode),
				})
				continue
			}
			plan.Warnings = append(plan.Warnings, CompileWarning{PassID: entry.ID, Detail: fmt.Sprintf("not eligible for path mode %q, dropped", r.TechniqueMode)})
			continue
		}

		seen[entry.ID] = true

		for _, in := range contract.Inputs {
			if !produced[in] && !isCrossFrameSemantic(in) {
				plan.Errors = append(plan.Errors, CompileError{
					Kind:   ErrUnresolvedInput,
					PassID: entry.ID,
					Detail: fmt.Sprintf("no earlier producer of semantic %d", in),
				})
			}
		}
		for _, out := range contract.Outputs {
			produced[out] = true
		}

		plan.Passes = append(plan.Passes, CompiledPass{
			Index:    len(plan.Passes),
			ID:       entry.ID,
			PassID:   entry.ID,
			Required: entry.Required,
			Contract: contract,
		})
	}

	plan.Valid = len(plan.Errors) == 0
	return plan
}
