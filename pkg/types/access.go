package types

// Access is the rights bitmask carried by an open handle. The numeric
// values match the Windows KEY_* security constants so masks round-trip
// through the native backend unchanged.
type Access uint32

const (
	KEY_QUERY_VALUE        Access = 0x0001
	KEY_SET_VALUE          Access = 0x0002
	KEY_CREATE_SUB_KEY     Access = 0x0004
	KEY_ENUMERATE_SUB_KEYS Access = 0x0008
	KEY_NOTIFY             Access = 0x0010
	KEY_CREATE_LINK        Access = 0x0020

	KEY_READ       Access = 0x20019
	KEY_WRITE      Access = 0x20006
	KEY_ALL_ACCESS Access = 0xF003F
)

// Has reports whether a grants every right in required.
func (a Access) Has(required Access) bool {
	return a&required == required
}
