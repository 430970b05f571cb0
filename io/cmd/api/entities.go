package api

type Config struct {
	IpKernel   string `json:"ip_kernel" yaml:"ip_kernel"`
	PortKernel int    `json:"port_kernel" yaml:"port_kernel"`
	PortIo     int    `json:"port_io" yaml:"port_io"`
	IpIo       string `json:"ip_io" yaml:"ip_io"`
	IoDelay    int    `json:"io_delay" yaml:"io_delay"`
	LogLevel   string `json:"log_level" yaml:"log_level"`
}
