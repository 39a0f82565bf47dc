package optimizer

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/shopfloor/tabu/plan"
)

// FingerprintOf hashes a plan's row-major aisle-id matrix with xxhash.
// Entrance/exit positions are assumed invariant across a trajectory (spec
// §4.4), so they are not folded into the hash separately; they are already
// present as aisle id 0 in the matrix like any other corridor cell.
func FingerprintOf(p *plan.Plan) Fingerprint {
	matrix := p.Matrix()
	buf := make([]byte, 8*len(matrix))
	for i, id := range matrix {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(int64(id)))
	}
	return Fingerprint(xxhash.Sum64(buf))
}
