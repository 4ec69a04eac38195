package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the chlog CLI.

// NotRepository creates an error when the target directory is not a git repository.
func NotRepository(path string, err error) *CLIError {
	return withCause(err, Prerequisite,
		fmt.Sprintf("not a git repository: %s", path),
		"Run chlog inside a git repository",
		"Or point at one with: chlog -C <path> generate",
	)
}

// RemoteNotFound creates an error when the configured remote does not exist.
func RemoteNotFound(remote string, err error) *CLIError {
	return withCause(err, Prerequisite,
		fmt.Sprintf("cannot read remote %q", remote),
		"List remotes with: git remote -v",
		"Set a different remote: CHLOG_REMOTE=<name>",
		"Or set the URL directly: CHLOG_REMOTE_URL=https://host/owner/repo",
	)
}

// HistoryUnavailable creates an error when commits or tags cannot be read.
func HistoryUnavailable(err error) *CLIError {
	return withCause(err, Prerequisite,
		"cannot read repository history",
		"Check that the repository is not a shallow clone: git fetch --unshallow",
		"Run with --debug for details",
	)
}

// ConfigParseError creates an error for an invalid config file or value.
func ConfigParseError(err error) *CLIError {
	return withCause(err, Configuration,
		"invalid configuration",
		"Check .chlog.yml (or .chlog.json) in the repository root",
		"Check CHLOG_* environment variables",
		"Create a fresh config with: chlog config init --force",
	)
}

// ConfigExists creates an error when config init would overwrite a file.
func ConfigExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("config file already exists: %s", path),
		"Use --force to overwrite it",
	)
}

// FileNotWritable creates an error when the changelog cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return withCause(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}

// ChangelogOutOfDate creates an error when the file on disk differs from a fresh render.
func ChangelogOutOfDate(path string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("%s is out of date", path),
		"Regenerate it with: chlog generate",
	)
}

// InvalidFormat creates an error for an unsupported --format value.
func InvalidFormat(format string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid format: %s", format),
		"chlog generate --format "+strings.Join(valid, "|"),
		"Valid formats: "+strings.Join(valid, ", "),
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'chlog <command> --help' to see valid options",
	)
}

// VersionNotFound creates an error when show is asked for an unknown release.
func VersionNotFound(version string, available []string) *CLIError {
	remediation := []string{"List releases with: chlog show"}
	if len(available) > 0 {
		remediation = append(remediation, "Available: "+strings.Join(available, ", "))
	}
	return NewArgumentError(fmt.Sprintf("version not found: %s", version), remediation...)
}

// withCause is WrapWithMessage that still returns an error when err is nil.
func withCause(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return newError(category, message, remediation)
	}
	return WrapWithMessage(err, category, message, remediation...)
}
