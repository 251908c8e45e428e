package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# textlens configuration
version: "1.0"

# Analysis service
server:
  # Base URL of the service exposing POST /analyze and POST /analyze_file
  base_url: "http://localhost:8000"
  # Request timeout; 0 waits until the transport gives up
  timeout: 0s
  user_agent: "textlens"

output:
  # text | json | markdown | csv
  default_format: "text"
  # auto | always | never
  color_mode: "auto"
  verbose: false
  emoji: true
  # Rows per word table in text and markdown output (0 = all)
  max_rows: 0

tables:
  # Collation used when sorting by word (BCP 47 tag)
  locale: "ru"

charts:
  # Directory for PNG/SVG chart export; empty disables export
  dir: ""
  # png | svg
  format: "png"
  width: 512
  height: 512

# Fetching of pages for "analyze --url"
web:
  max_body_bytes: 10485760
  timeout: 30s
`
}

// MinimalSampleConfig returns a configuration with only the essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
server:
  base_url: "http://localhost:8000"
output:
  default_format: "text"
`
}
