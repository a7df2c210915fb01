// Package barrierplan derives synchronization barriers and memory-aliasing
// classes from a ResourcePlan.
package barrierplan

import (
	"github.com/shsengine/shs/pass"
	"github.com/shsengine/shs/pathcompiler"
	"github.com/shsengine/shs/resourceplan"
)

// Access is a bitmask of GPU memory access kinds.
type Access uint32

// Standard access flags.
const (
	AccessNone                  Access = 0
	AccessShaderRead            Access = 1 << 0
	AccessShaderWrite           Access = 1 << 1
	AccessColorAttachmentWrite  Access = 1 << 2
	AccessDepthAttachmentWrite  Access = 1 << 3
	AccessDepthAttachmentRead   Access = 1 << 4
)

// Layout abstracts over backend-specific image layouts.
type Layout string

// Standard layouts.
const (
	LayoutUndefined      Layout = "undefined"
	LayoutColorAttach    Layout = "color_attachment"
	LayoutDepthAttach    Layout = "depth_attachment"
	LayoutShaderReadOnly Layout = "shader_read_only"
	LayoutGeneral        Layout = "general"
)

// Edge is one producer->consumer synchronization dependency.
type Edge struct {
	ProducerIndex int
	ProducerID    pass.Id
	ConsumerIndex int
	ConsumerID    pass.Id
	Semantic      pass.Semantic
	SrcAccess     Access
	DstAccess     Access
	SrcLayout     Layout
	DstLayout     Layout
	// RequiresMemoryBarrier is true when the producer's access writes
	// memory the consumer will read.
	RequiresMemoryBarrier bool
}

// allocDescriptor is the coarse allocation-compatibility key two resources
// must share to be considered for the same alias class: broad storage
// class, extent policy, and layer count. Format precision (HDR vs LDR)
// does not participate, so ColorHDR and ColorLDR resources can share a
// class.
type allocDescriptor struct {
	class  string
	extent resourceplan.ExtentPolicy
	layers int
}

func descriptorFor(r resourceplan.Resource) allocDescriptor {
	class := "mono"
	switch r.Format {
	case resourceplan.FormatColorHDR, resourceplan.FormatColorLDR:
		class = "color"
	case resourceplan.FormatDepth:
		class = "depth"
	case resourceplan.FormatMotion:
		class = "motion"
	case resourceplan.FormatBuffer:
		class = "buffer"
	}
	return allocDescriptor{class: class, extent: r.Extent, layers: r.Layers}
}

// AliasClass is a set of transient resources whose lifetimes do not
// overlap and whose allocation descriptors agree; they may share physical
// storage.
type AliasClass struct {
	ID      int
	Members []int // resource IDs, in the order they were grouped
	Slots   int
}

// BarrierPlan is the planner's output.
type BarrierPlan struct {
	Edges        []Edge
	AliasClasses []AliasClass
}

func accessAndLayoutFor(contract pass.Contract, semantic pass.Semantic, asInput bool) (Access, Layout) {
	if asInput {
		if contract.Kind == pass.KindCompute {
			return AccessShaderRead, LayoutGeneral
		}
		if semantic == pass.Depth || semantic == pass.SemanticShadowMap || semantic == pass.HistoryDepth {
			return AccessDepthAttachmentRead, LayoutShaderReadOnly
		}
		return AccessShaderRead, LayoutShaderReadOnly
	}
	if contract.Kind == pass.KindCompute {
		return AccessShaderWrite, LayoutGeneral
	}
	if semantic == pass.Depth || semantic == pass.SemanticShadowMap || semantic == pass.HistoryDepth {
		return AccessDepthAttachmentWrite, LayoutDepthAttach
	}
	return AccessColorAttachmentWrite, LayoutColorAttach
}

// Plan derives a BarrierPlan from ep's compiled passes and rp's bindings.
// One edge is produced per (producer pass id, semantic, consumer pass id)
// tuple; repeated reads of the same resource by the same consumer collapse
// to a single edge.
func Plan(ep pathcompiler.ExecutionPlan, rp resourceplan.ResourcePlan) BarrierPlan {
	passByIndex := make(map[int]pass.Contract, len(ep.Passes))
	idByIndex := make(map[int]pass.Id, len(ep.Passes))
	for _, cp := range ep.Passes {
		passByIndex[cp.Index] = cp.Contract
		idByIndex[cp.Index] = cp.ID
	}

	bp := BarrierPlan{}
	seen := make(map[[3]any]bool)

	for _, b := range rp.Bindings {
		consumerContract := passByIndex[b.PassIndex]
		consumerID := idByIndex[b.PassIndex]

		for _, resID := range b.Reads {
			res, ok := rp.ResourceByID(resID)
			if !ok {
				continue
			}
			producerContract := passByIndex[res.ProducerIndex]
			producerID := idByIndex[res.ProducerIndex]

			key := [3]any{producerID, res.Semantic, consumerID}
			if seen[key] {
				continue
			}
			seen[key] = true

			srcAccess, srcLayout := accessAndLayoutFor(producerContract, res.Semantic, false)
			dstAccess, dstLayout := accessAndLayoutFor(consumerContract, res.Semantic, true)

			bp.Edges = append(bp.Edges, Edge{
				ProducerIndex:         res.ProducerIndex,
				ProducerID:            producerID,
				ConsumerIndex:         b.PassIndex,
				ConsumerID:            consumerID,
				Semantic:              res.Semantic,
				SrcAccess:             srcAccess,
				DstAccess:             dstAccess,
				SrcLayout:             srcLayout,
				DstLayout:             dstLayout,
				RequiresMemoryBarrier: true,
			})
		}
	}

	bp.AliasClasses = computeAliasClasses(rp)
	return bp
}

type interval struct {
	first, last int
}

// overlaps reports whether two resource lifetimes conflict. A resource's
// last use is the read that happens at the *start* of its last-reader
// pass, before that pass's own writes; so a producer beginning exactly at
// another resource's last-reader index does not conflict (this is what
// makes post-color ping-pong aliasing possible).
func (a interval) overlaps(b interval) bool {
	return !(b.first >= a.last || a.first >= b.last)
}

func computeAliasClasses(rp resourceplan.ResourcePlan) []AliasClass {
	lastReader := make(map[int]int, len(rp.Resources))
	for _, r := range rp.Resources {
		lastReader[r.ID] = r.ProducerIndex
	}
	for _, b := range rp.Bindings {
		for _, resID := range b.Reads {
			if b.PassIndex > lastReader[resID] {
				lastReader[resID] = b.PassIndex
			}
		}
	}

	type group struct {
		desc     allocDescriptor
		members  []int
		interval []interval
	}
	var groups []group

	for _, r := range rp.Resources {
		desc := descriptorFor(r)
		iv := interval{first: r.ProducerIndex, last: lastReader[r.ID]}

		placed := false
		for gi := range groups {
			if groups[gi].desc != desc {
				continue
			}
			conflict := false
			for _, existing := range groups[gi].interval {
				if existing.overlaps(iv) {
					conflict = true
					break
				}
			}
			if !conflict {
				groups[gi].members = append(groups[gi].members, r.ID)
				groups[gi].interval = append(groups[gi].interval, iv)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, group{desc: desc, members: []int{r.ID}, interval: []interval{iv}})
		}
	}

	classes := make([]AliasClass, 0, len(groups))
	for i, g := range groups {
		if len(g.members) < 2 {
			// A class of one resource is not worth reporting as aliasing
			// metadata; nothing shares its storage.
			continue
		}
		classes = append(classes, AliasClass{ID: i, Members: g.members, Slots: 1})
	}
	return classes
}
