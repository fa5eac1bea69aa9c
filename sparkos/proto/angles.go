package proto

import "encoding/binary"

// MaxAngles is the largest axis count that fits one MsgAngles payload.
const MaxAngles = (128 - 2) / 2

// AnglesPayload encodes a MsgAngles report.
//
// Layout (little-endian):
//   - u8: device index
//   - u8: axis count
//   - u16 per axis: angle in [0,360)
func AnglesPayload(device uint8, angles []int) []byte {
	n := len(angles)
	if n > MaxAngles {
		n = MaxAngles
	}
	buf := make([]byte, 2+2*n)
	buf[0] = device
	buf[1] = uint8(n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[2+2*i:], uint16(angles[i]))
	}
	return buf
}

// DecodeAnglesPayload decodes an AnglesPayload, appending the angles to dst[:0].
func DecodeAnglesPayload(b []byte, dst []int) (device uint8, angles []int, ok bool) {
	if len(b) < 2 {
		return 0, nil, false
	}
	n := int(b[1])
	if len(b) != 2+2*n {
		return 0, nil, false
	}
	angles = dst[:0]
	for i := 0; i < n; i++ {
		angles = append(angles, int(binary.LittleEndian.Uint16(b[2+2*i:])))
	}
	return b[0], angles, true
}
