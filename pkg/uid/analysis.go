package uid

import (
	"encoding/hex"

	"lukechampine.com/frand"
)

// GenerateAnalysisID returns a random 128-bit hex identifier.
func GenerateAnalysisID() string {
	return hex.EncodeToString(frand.Bytes(16))
}
