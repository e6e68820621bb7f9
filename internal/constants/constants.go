package constants

import "time"

const (
	AppName            = "timecapsule"
	BinaryName         = "capsule"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/timecapsule/capsule.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat matches the short card date, e.g. "Jan 2, 2006"
	DisplayDateFormat = "Jan 2, 2006"

	// LongDateFormat is used for the preview and the toast, e.g. "January 2, 2006"
	LongDateFormat = "January 2, 2006"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "capsule-"
	BackupFileSuffix = ".db"

	// Instance lock
	InstanceLockfileName = "capsule.lock"

	// Capsule limits
	MaxMediaPerCapsule = 5
	MaxTitleLength     = 120

	// Password strength
	MinPasswordLength = 8

	// Countdown cadence
	TickInterval = time.Second

	// Simulated submission delays
	SealDelay     = 1500 * time.Millisecond
	RegisterDelay = 1000 * time.Millisecond

	// Reveal choreography for unlocked capsules
	RevealDelay      = 500 * time.Millisecond
	ConfettiDuration = 4 * time.Second
	ConfettiPieces   = 50

	// Export format
	ExportVersion = 1
)

// QuickDate is a preset offset offered by the lock date step
type QuickDate struct {
	Label string
	Key   string
	Days  int
}

// QuickDates are the presets shown on the lock date step, in display order.
var QuickDates = []QuickDate{
	{Label: "1 Week", Key: "1w", Days: 7},
	{Label: "1 Month", Key: "1m", Days: 30},
	{Label: "6 Months", Key: "6m", Days: 180},
	{Label: "1 Year", Key: "1y", Days: 365},
	{Label: "5 Years", Key: "5y", Days: 365 * 5},
}
