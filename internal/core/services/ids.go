package services

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"lukechampine.com/blake3"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// nodeNamespace seeds stable node ids.
var nodeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://woocommerce.com/wcgraph"))

// DigestFunc computes the content digest of a serialised node.
// It must be total.
type DigestFunc func(content []byte) string

// Blake3Digest returns the hex encoded BLAKE3-256 hash of content.
func Blake3Digest(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// StableID derives the node id for a record. The same kind and upstream
// id always produce the same node id.
func StableID(kind domain.ResourceKind, upstreamID int64) string {
	seed := fmt.Sprintf("woocommerce-%s-%d", kind.FieldName(), upstreamID)
	return uuid.NewSHA1(nodeNamespace, []byte(seed)).String()
}

// BuildRecords turns a fetched collection into records with stable ids.
func BuildRecords(kind domain.ResourceKind, raws []domain.RawRecord) []*domain.Record {
	records := make([]*domain.Record, 0, len(raws))
	for _, raw := range raws {
		upstreamID, _ := domain.AsInt64(raw[domain.FieldID])
		records = append(records, domain.NewRecord(kind, StableID(kind, upstreamID), raw))
	}
	return records
}
