package shell

// Registry layout used by WSL
const (
	// LxssPath is the HKCU key WSL registers distributions under
	LxssPath = `Software\Microsoft\Windows\CurrentVersion\Lxss`

	// ValueDefaultDistribution names the subkey of the default distribution
	ValueDefaultDistribution = "DefaultDistribution"

	// ValueDistributionName is the required name of a distribution
	ValueDistributionName = "DistributionName"

	// ValueBasePath is the optional install directory of a distribution
	ValueBasePath = "BasePath"

	// RootFSSuffix is appended to BasePath to locate the root filesystem
	RootFSSuffix = `\rootfs`
)

// Binaries under the system root
const (
	// DefaultSystemRoot is used when the host does not report %windir%
	DefaultSystemRoot = `C:\Windows`

	legacyBinary = `system32\bash.exe`
	modernBinary = `system32\wsl.exe`
)

// Descriptor identities
const (
	// IDDefault is shared by the default-distribution and legacy descriptors
	IDDefault = "wsl"

	// IDPrefix prefixes the slug of each enumerated distribution
	IDPrefix = "wsl-"

	// NameDefault labels the default-distribution descriptor
	NameDefault = "WSL / Default distro"

	// NameLegacy labels the bash.exe descriptor
	NameLegacy = "WSL / Bash on Windows"

	// NamePrefix prefixes the raw name of each enumerated distribution
	NamePrefix = "WSL / "

	// legacyIconName is looked up for the bash.exe descriptor
	legacyIconName = "Linux"
)

// Environment variables set for every launched shell
const (
	EnvTerm      = "TERM"
	EnvColorTerm = "COLORTERM"

	termValue      = "xterm-color"
	colorTermValue = "truecolor"
)
