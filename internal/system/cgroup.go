package system

import "strings"

// ContainerIDFromCgroups returns the container ID encoded in a process's
// cgroup paths, or "" when the process is not in a container. Handles the
// cgroupfs layout (/docker/<id>) and the systemd one (docker-<id>.scope).
func ContainerIDFromCgroups(paths []string) string {
	for _, p := range paths {
		p = strings.TrimRight(p, "/")
		last := p[strings.LastIndex(p, "/")+1:]
		last = strings.TrimPrefix(last, "docker-")
		last = strings.TrimSuffix(last, ".scope")
		if isContainerID(last) {
			return last
		}
	}
	return ""
}

func isContainerID(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
