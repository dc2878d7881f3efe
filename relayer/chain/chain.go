// Package chain defines the capability contract a single chain must expose
// to the relayer core: encoding, size estimation, submission and status,
// extended with the identifiers IBC chains carry.
//
// The source expresses this as a tower of generic traits with many
// associated types. Here it collapses into one generic struct of function
// fields — Message and Event remain type parameters; every other
// associated type (Height, Timestamp, ChainStatus, ClientId, ...) is a
// concrete, non-generic type shared by every chain implementation.
package chain

import "context"

// Height is a totally ordered chain height, modeled the way real IBC
// heights are: a revision number (bumped on chain upgrades/hard forks) and
// a monotonic height within that revision.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// Less reports whether h sorts before other, comparing revision number
// first and then height within the revision.
func (h Height) Less(other Height) bool {
	if h.RevisionNumber != other.RevisionNumber {
		return h.RevisionNumber < other.RevisionNumber
	}
	return h.RevisionHeight < other.RevisionHeight
}

// Timestamp is a chain's notion of consensus time, in Unix nanoseconds.
type Timestamp int64

// ChainStatus is the opaque status snapshot query_chain_status returns.
type ChainStatus struct {
	Height    Height
	Timestamp Timestamp
}

// ClientId, ConnectionId, ChannelId and PortId name the IBC identifiers a
// chain's counterparty-facing operations are indexed by.
type (
	ClientId     string
	ConnectionId string
	ChannelId    string
	PortId       string
	Sequence     uint64
)

// ConsensusState is the opaque result of querying a client's state at a
// given height; its shape is chain-specific and carried as raw bytes here.
type ConsensusState []byte

// ChainOps bundles every operation the batching core and relay
// orchestration need from a single chain, generic over that chain's
// Message and Event types.
type ChainOps[M any, E any] struct {
	// ChainID names the chain this ChainOps instance addresses; used only
	// for logging and error messages.
	ChainID string

	// Encode serializes a message for submission, given the signer that
	// will sign it.
	Encode func(ctx context.Context, msg M, signer string) ([]byte, error)

	// EstimateLen returns an upper bound on the encoded size of msg. A
	// non-nil error here is suppressed by the batching core to a size of
	// zero; Encode/Submit will surface the real failure.
	EstimateLen func(ctx context.Context, msg M) (int, error)

	// Submit sends a batch of messages as a single transaction. The
	// returned slice MUST have exactly len(msgs) elements, one event list
	// per input message, in order.
	Submit func(ctx context.Context, msgs []M) ([][]E, error)

	// Status returns the chain's current height and timestamp.
	Status func(ctx context.Context) (ChainStatus, error)

	// CounterpartyMessageHeight returns the counterparty height a message
	// references, if any (e.g. a client update's target height).
	CounterpartyMessageHeight func(msg M) (Height, bool)

	// QueryConsensusState looks up the consensus state a client recorded
	// for the counterparty at the given height.
	QueryConsensusState func(ctx context.Context, client ClientId, height Height) (ConsensusState, error)

	// IsPacketReceived reports whether a packet with the given sequence
	// has already been received on the given port/channel.
	IsPacketReceived func(ctx context.Context, port PortId, channel ChannelId, seq Sequence) (bool, error)
}
