package port

import "github.com/toadworks/toadbox-ctl/internal/instance"

// Suggest returns the next free (ssh, rdp) host port pair, scanning linearly
// upward from each base. The two roles are independent: an SSH port and an
// RDP port may coincide numerically as long as each is unique within its own
// role.
func Suggest(sshBase, rdpBase int, usedSSH, usedRDP map[int]bool) (sshPort, rdpPort int) {
	sshPort = sshBase
	for usedSSH[sshPort] {
		sshPort++
	}

	rdpPort = rdpBase
	for usedRDP[rdpPort] {
		rdpPort++
	}

	return sshPort, rdpPort
}

// UsedPorts collects the SSH and RDP ports claimed by existing instances.
func UsedPorts(instances []*instance.Instance) (usedSSH, usedRDP map[int]bool) {
	usedSSH = make(map[int]bool, len(instances))
	usedRDP = make(map[int]bool, len(instances))
	for _, inst := range instances {
		usedSSH[inst.SSHPort] = true
		usedRDP[inst.RDPPort] = true
	}
	return usedSSH, usedRDP
}
