package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-remote-media"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RemoteResourceUUID identifies a stored resource reference. The remote
// service scopes identifiers by resource type, so both are part of the key.
// Remote identifiers are case sensitive and are hashed without normalisation.
func RemoteResourceUUID(resourceType, remoteID string) uuid.UUID {
	remoteID = strings.TrimSpace(remoteID)
	if remoteID == "" {
		return uuid.Nil
	}
	key := ResourceKey(resourceType, remoteID)
	uid, err := hashid.NewUUID(namespace+":resource:"+key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(namespace+":resource:"+key))
	}
	return uid
}

// ResourceKey is the natural key of a resource reference: "<type>:<id>".
func ResourceKey(resourceType, remoteID string) string {
	return strings.ToLower(strings.TrimSpace(resourceType)) + ":" + strings.TrimSpace(remoteID)
}
