package common

const (
	KEY_LATEST_PATTERN = "latest_pattern:%s"
)
