package routing

import (
	"os"
	"strings"
	"sync"
)

// Environment overrides for the credential pool. The comma-separated form
// takes priority over the single-value form.
const (
	envCredentialList   = "OPENROUTESERVICE_API_KEYS"
	envCredentialSingle = "OPENROUTESERVICE_API_KEY"
)

// Baked-in keys used only when nothing else is supplied.
var defaultCredentials = []string{
	"eyJvcmciOiI1YjNjZTM1OTc4NTExMTAwMDFjZjYyNDgiLCJpZCI6ImRlbW8tcHJpbWFyeSIsImgiOiJtdXJtdXI2NCJ9",
	"eyJvcmciOiI1YjNjZTM1OTc4NTExMTAwMDFjZjYyNDgiLCJpZCI6ImRlbW8tc2Vjb25kYXJ5IiwiaCI6Im11cm11cjY0In0=",
}

// CredentialRotator maintains an ordered, deduplicated pool of routing
// credentials and hands them out round-robin. The pool is assembled on every
// draw from, in priority order: the comma-separated env override, the
// single-value env override, programmatically registered extras, and the
// built-in defaults (used only when everything else is absent).
//
// The rotation index is owned by the instance and guarded by a mutex so the
// rotator can be shared across concurrent HTTP handlers.
type CredentialRotator struct {
	mu         sync.Mutex
	registered []string
	index      int
}

func NewCredentialRotator() *CredentialRotator {
	return &CredentialRotator{}
}

// Register adds extra credentials to the rotation pool. Blank entries are
// dropped; surrounding whitespace is trimmed.
func (r *CredentialRotator) Register(credentials ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range credentials {
		c = strings.TrimSpace(c)
		if c != "" {
			r.registered = append(r.registered, c)
		}
	}
}

// Gather returns the deduplicated, order-preserving credential pool. An empty
// pool is a valid state; Gather never fails.
func (r *CredentialRotator) Gather() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gatherLocked()
}

func (r *CredentialRotator) gatherLocked() []string {
	var pool []string

	if list := os.Getenv(envCredentialList); list != "" {
		for _, c := range strings.Split(list, ",") {
			if c = strings.TrimSpace(c); c != "" {
				pool = append(pool, c)
			}
		}
	}

	if single := strings.TrimSpace(os.Getenv(envCredentialSingle)); single != "" {
		pool = append(pool, single)
	}

	pool = append(pool, r.registered...)

	if len(pool) == 0 {
		pool = append(pool, defaultCredentials...)
	}

	seen := make(map[string]struct{}, len(pool))
	deduped := pool[:0]
	for _, c := range pool {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		deduped = append(deduped, c)
	}

	return deduped
}

// Next returns the next credential in rotation and advances the shared index.
// The second return is false when the pool is empty.
func (r *CredentialRotator) Next() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool := r.gatherLocked()
	if len(pool) == 0 {
		return "", false
	}

	credential := pool[r.index%len(pool)]
	r.index = (r.index + 1) % len(pool)
	return credential, true
}
