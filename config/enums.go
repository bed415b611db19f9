package config

//go:generate go tool go-enum --marshal --names

// Output image format of exported frames.
// ENUM(png, jpeg)
type ImageFormat int

// Level of logging output.
// ENUM(none, normal, debug)
type LogLevel int
