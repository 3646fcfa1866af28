package worker

import (
	"github.com/google/uuid"

	"github.com/tranvictor/nftmeta/collection"
	"github.com/tranvictor/nftmeta/metadata"
	"github.com/tranvictor/nftmeta/resolver"
)

// SourceKind tags where a collection's metadata comes from.
type SourceKind int

const (
	// SourceContract resolves tokens through a smart contract address.
	SourceContract SourceKind = iota
	// SourceMetadataURL substitutes token ids into a direct url template,
	// no chain involved.
	SourceMetadataURL
)

// Source describes one collection to resolve. It is immutable once a
// session starts.
type Source struct {
	Kind SourceKind

	// contract sources
	Address string

	// url-template sources
	Template   string
	StartToken uint64
	// Supply is the expected token count when the caller knows it (eg.
	// from the collection book); 0 means unknown.
	Supply uint64
}

func ContractSource(address string) Source {
	return Source{Kind: SourceContract, Address: address}
}

func TemplateSource(template string, startToken, supply uint64) Source {
	return Source{
		Kind:       SourceMetadataURL,
		Template:   template,
		StartToken: startToken,
		Supply:     supply,
	}
}

type EventKind int

const (
	// EventResolved reports the resolved contract interface, once per
	// session, before any token events.
	EventResolved EventKind = iota
	// EventProgress delivers one newly resolved token.
	EventProgress
	// EventProgressFailed reports one token skipped after a non-fatal
	// failure.
	EventProgressFailed
	// EventCompleted is terminal: every enumerated id was attempted.
	EventCompleted
	// EventFatal is terminal: the session died before or during
	// resolution and no further events follow.
	EventFatal
)

func (k EventKind) String() string {
	switch k {
	case EventResolved:
		return "resolved"
	case EventProgress:
		return "progress"
	case EventProgressFailed:
		return "progress_failed"
	case EventCompleted:
		return "completed"
	default:
		return "fatal"
	}
}

// Event is one message on the worker-to-consumer channel. Events of a
// session are delivered in the order the worker produced them; after a
// terminal event no further events for that session are ever delivered.
type Event struct {
	Session uuid.UUID
	Kind    EventKind

	// EventResolved
	Iface *resolver.ContractIface

	// EventProgress
	Token *metadata.TokenMetadata

	// EventProgressFailed
	TokenID uint64
	Reason  string

	// running aggregate, final on EventCompleted
	Stats collection.Stats

	// EventFatal
	Err error
}
