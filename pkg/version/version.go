package version

import "fmt"

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "VERSION_PLACEHOLDER"
	CommitSHA = "COMMIT_PLACEHOLDER"
)

const Name = "qrgen"

func GetVersionInfo() string {
	return Name + " " + Version
}

func GetDetailedVersionInfo() string {
	return fmt.Sprintf("%s\nVersion:  %s\nCommit:   %s\n", Name, Version, CommitSHA)
}
