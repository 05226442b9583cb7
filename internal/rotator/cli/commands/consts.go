package commands

const (
	ConfigPathFlag         = "config"
	ConfigPathShortFlag    = "c"
	ConfigPathDefaultValue = ""
	ConfigPathUsage        = "Location of config file"

	TTYFlag      = "tty"
	TTYShortFlag = "t"
	TTYUsage     = "Activate TTY mode"

	NoTTYFlag         = "no-tty"
	NoTTYShortFlag    = "T"
	NoTTYDefaultValue = false
	NoTTYUsage        = "Deactivate TTY mode"

	DebugModeFlag         = "debug"
	DebugModeShortFlag    = "d"
	DebugModeDefaultValue = false
	DebugModeUsage        = "Enable debug mode"

	CPUProfileFlag         = "cpu-profile"
	CPUProfileShortFlag    = ""
	CPUProfileDefaultValue = ""
	CPUProfileUsage        = "Path to GoLang CPU profile file"

	MemoryProfileFlag         = "memory-profile"
	MemoryProfileShortFlag    = ""
	MemoryProfileDefaultValue = ""
	MemoryProfileUsage        = "Path to GoLang memory profile file"

	DatabaseDriverFlag         = "driver"
	DatabaseDriverShortFlag    = ""
	DatabaseDriverDefaultValue = ""
	DatabaseDriverUsage        = "Database driver (sqlite or postgres)"

	DatabaseDSNFlag         = "dsn"
	DatabaseDSNShortFlag    = ""
	DatabaseDSNDefaultValue = ""
	DatabaseDSNUsage        = "Database connection string"

	PageSizeFlag         = "page-size"
	PageSizeShortFlag    = "p"
	PageSizeDefaultValue = 0
	PageSizeUsage        = "Rows processed per page"

	FetchStrategyFlag         = "strategy"
	FetchStrategyShortFlag    = "s"
	FetchStrategyDefaultValue = ""
	FetchStrategyUsage        = "Page fetch strategy (offset or keyset)"

	CheckpointPathFlag         = "checkpoint"
	CheckpointPathShortFlag    = "k"
	CheckpointPathDefaultValue = ""
	CheckpointPathUsage        = "Location of checkpoint file"

	RestartFlag         = "restart"
	RestartShortFlag    = "r"
	RestartDefaultValue = false
	RestartUsage        = "Ignore saved checkpoint and start over from the first page"

	SeedCountFlag         = "count"
	SeedCountShortFlag    = "n"
	SeedCountDefaultValue = 1000000
	SeedCountUsage        = "Number of tickets to insert"

	ForcePurgeFlag         = "yes"
	ForcePurgeShortFlag    = "y"
	ForcePurgeDefaultValue = false
	ForcePurgeUsage        = "Purge without asking for confirmation"

	HTTPListenAddressFlag         = "listen-address"
	HTTPListenAddressShortFlag    = "a"
	HTTPListenAddressDefaultValue = ""
	HTTPListenAddressUsage        = "HTTP listen address"

	HTTPReadTimeoutFlag         = "read-timeout"
	HTTPReadTimeoutShortFlag    = ""
	HTTPReadTimeoutDefaultValue = 0
	HTTPReadTimeoutUsage        = "HTTP read timeout"

	HTTPWriteTimeoutFlag         = "write-timeout"
	HTTPWriteTimeoutShortFlag    = ""
	HTTPWriteTimeoutDefaultValue = 0
	HTTPWriteTimeoutUsage        = "HTTP write timeout"

	HTTPIdleTimeoutFlag         = "idle-timeout"
	HTTPIdleTimeoutShortFlag    = ""
	HTTPIdleTimeoutDefaultValue = 0
	HTTPIdleTimeoutUsage        = "HTTP idle timeout"
)
