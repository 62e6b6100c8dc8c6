//go:build unix

package fs

import (
	"os"
	"os/user"
	"strconv"
	"sync"
	"syscall"
)

var (
	ownerCacheMu sync.Mutex
	userNames    = map[uint32]string{}
	groupNames   = map[uint32]string{}
)

// ownerOf resolves the owner names and link count of a file
func ownerOf(info os.FileInfo) (Owner, uint64) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Owner{User: "-", Group: "-"}, 1
	}

	uid, gid := st.Uid, st.Gid
	owner := Owner{
		User:  lookupUser(uid),
		Group: lookupGroup(gid),
		Mine:  int(uid) == os.Getuid(),
	}
	return owner, uint64(st.Nlink)
}

func lookupUser(uid uint32) string {
	ownerCacheMu.Lock()
	defer ownerCacheMu.Unlock()

	if name, ok := userNames[uid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(uid), 10)
	name := id
	if u, err := user.LookupId(id); err == nil {
		name = u.Username
	}
	userNames[uid] = name
	return name
}

func lookupGroup(gid uint32) string {
	ownerCacheMu.Lock()
	defer ownerCacheMu.Unlock()

	if name, ok := groupNames[gid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(gid), 10)
	name := id
	if g, err := user.LookupGroupId(id); err == nil {
		name = g.Name
	}
	groupNames[gid] = name
	return name
}
