package etf

// External Term Format tag bytes.
// See: https://www.erlang.org/doc/apps/erts/erl_ext_dist
const (
	// Version is the leading byte of every encoded term (always 131).
	Version byte = 131

	tagAtomExt          byte = 100
	tagSmallAtomExt     byte = 115
	tagAtomUTF8Ext      byte = 118
	tagSmallAtomUTF8Ext byte = 119

	tagSmallIntegerExt byte = 97
	tagIntegerExt      byte = 98
	tagSmallBigExt     byte = 110
	tagLargeBigExt     byte = 111

	tagFloatExt    byte = 99
	tagNewFloatExt byte = 70

	tagSmallTupleExt byte = 104
	tagLargeTupleExt byte = 105
	tagNilExt        byte = 106
	tagStringExt     byte = 107
	tagListExt       byte = 108
	tagMapExt        byte = 116

	tagBinaryExt byte = 109
)
