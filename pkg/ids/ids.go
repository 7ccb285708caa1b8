// Package ids generates the prefixed opaque identifiers used for public
// record ids (PAT-..., HOSP-..., VISIT-..., ALERT-..., EMRG-...).
package ids

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	PrefixPatient   = "PAT"
	PrefixHospital  = "HOSP"
	PrefixVisit     = "VISIT"
	PrefixAlert     = "ALERT"
	PrefixEmergency = "EMRG"
)

const randomLen = 6

// New returns an opaque identifier of the form PREFIX-<base36 millis>-<random>.
// The timestamp part keeps ids roughly sortable; the random suffix breaks
// same-millisecond collisions.
func New(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s", prefix, ts, randomSuffix(randomLen))
}

var suffixAlphabet = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform entropy source is
			// broken; fall back to a time-derived byte.
			b[i] = suffixAlphabet[time.Now().UnixNano()%int64(len(suffixAlphabet))]
			continue
		}
		b[i] = suffixAlphabet[idx.Int64()]
	}
	return string(b)
}
