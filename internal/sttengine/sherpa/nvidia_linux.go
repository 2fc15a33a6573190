//go:build linux

package sherpa

import "os"

// HasNvidiaGPU checks for NVIDIA GPU availability, covering both discrete
// GPUs and Jetson SOC devices.
func HasNvidiaGPU() bool {
	paths := []string{
		"/usr/bin/nvidia-smi",
		"/usr/local/bin/nvidia-smi",
		"/opt/nvidia/bin/nvidia-smi",
		"/dev/nvidia0",
		"/dev/nvhost-gpu",
		"/dev/nvhost-ctrl-gpu",
		"/dev/nvmap",
		"/etc/nv_tegra_release",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	if data, err := os.ReadFile("/proc/device-tree/compatible"); err == nil {
		s := string(data)
		if containsAny(s, "nvidia,tegra", "nvidia,jetson") {
			return true
		}
	}
	return false
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if len(s) >= len(sub) {
			for i := 0; i+len(sub) <= len(s); i++ {
				if s[i:i+len(sub)] == sub {
					return true
				}
			}
		}
	}
	return false
}
