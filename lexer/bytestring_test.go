package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteString_Debug(t *testing.T) {
	assert.Equal(t, `"abc"`, ByteStringFrom("abc").Debug())
	assert.Equal(t, `"\0\n\r\t"`, ByteStringFrom("\x00\n\r\t").Debug())
	assert.Equal(t, `"\x01\x10\x7f\xff"`, ByteString([]byte{0x01, 0x10, 0x7f, 0xff}).Debug())
}

func TestByteString_Equal(t *testing.T) {
	assert.True(t, ByteStringFrom("abc").Equal(NewByteString([]byte("abc"))))
	assert.False(t, ByteStringFrom("abc").Equal(ByteStringFrom("abd")))
	assert.True(t, ByteStringFrom("abc").EqualString("abc"))
}

func TestByteString_String(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef}
	bs := NewByteString(raw)
	assert.Equal(t, raw, bs.Bytes())
	assert.Equal(t, 4, bs.Len())
	assert.False(t, bs.IsEmpty())
	assert.True(t, ByteString(nil).IsEmpty())
}
