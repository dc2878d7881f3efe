package relay

import "github.com/icellan/ibc-relayer-core/relayer/chain"

// Target tags which side of a Relay a message-sender operates on.
type Target int

const (
	// TargetSrc addresses the relay's source chain.
	TargetSrc Target = iota
	// TargetDst addresses the relay's destination chain.
	TargetDst
)

func (t Target) String() string {
	if t == TargetSrc {
		return "src"
	}
	return "dst"
}

// Relay binds a source and destination chain, generic over the Message and
// Event types both sides of the relay share.
type Relay[M any, E any] struct {
	Src chain.ChainOps[M, E]
	Dst chain.ChainOps[M, E]
}

// ChainFor resolves the ChainOps a message-sender operating under target
// should submit through.
func (r *Relay[M, E]) ChainFor(target Target) *chain.ChainOps[M, E] {
	if target == TargetSrc {
		return &r.Src
	}
	return &r.Dst
}

// CounterpartyFor resolves the ChainOps on the other side of the relay from
// target — the chain whose height/consensus state target's messages
// reference.
func (r *Relay[M, E]) CounterpartyFor(target Target) *chain.ChainOps[M, E] {
	if target == TargetSrc {
		return &r.Dst
	}
	return &r.Src
}
