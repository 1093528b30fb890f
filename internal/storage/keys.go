package storage

// Keys of the persisted blobs.
const (
	KeyProfile    = "profile"
	KeyEntries    = "entries"
	KeyAllUsers   = "all-users"
	KeyAccessFlag = "access-flag"
	KeyGroups     = "groups"
)

// undefinedValue is what a careless writer leaves behind for an unset value.
const undefinedValue = "undefined"
