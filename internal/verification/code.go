// Package verification computes the package verification code: an
// order-independent aggregate over per-file checksums, compatible with
// other implementations of the same standard.
package verification

import (
	"sort"
	"strings"

	"github.com/attesta/attesta/internal/digest"
	"github.com/attesta/attesta/internal/types"
)

// Compute folds the checksums of all identities not named in excluded into
// a single aggregate value. The checksum strings are sorted byte-wise
// ascending and concatenated without separators before hashing, which is
// what makes the value independent of traversal order. An empty remaining
// set hashes the empty byte string.
func Compute(identities []types.FileIdentity, excluded []string) types.VerificationCode {
	skip := make(map[string]bool, len(excluded))
	for _, p := range excluded {
		skip[p] = true
	}
	checksums := make([]string, 0, len(identities))
	for _, id := range identities {
		if skip[id.Path] {
			continue
		}
		checksums = append(checksums, id.Checksum)
	}
	sort.Strings(checksums)

	algo, err := digest.Lookup(digest.SHA1)
	if err != nil {
		// sha1 is compiled in; Lookup cannot fail for it
		panic(err)
	}
	value := digest.Bytes([]byte(strings.Join(checksums, "")), algo)

	out := append([]string(nil), excluded...)
	sort.Strings(out)
	return types.VerificationCode{Value: value, ExcludedPaths: out}
}
