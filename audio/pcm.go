package audio

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// RenderF32 drains s into interleaved little-endian float32 stereo frames,
// the layout ebiten's NewPlayerF32FromBytes expects.
func RenderF32(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				v := float32(math.Max(-1, math.Min(1, buf[i][c])))
				out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}
