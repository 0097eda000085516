package node

import "os"

// GetNodeName names this host in notifications and heartbeats. NODE_NAME wins
// over HOSTNAME, then the kernel hostname is used.
func GetNodeName() string {
	nodeName := os.Getenv("NODE_NAME")
	if nodeName == "" {
		nodeName = os.Getenv("HOSTNAME")
	}
	if nodeName == "" {
		if h, err := os.Hostname(); err == nil {
			nodeName = h
		}
	}
	if nodeName == "" {
		nodeName = "unknown"
	}
	return nodeName
}
