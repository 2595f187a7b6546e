package config

const (
	defaultWeightsDir           = "~/.cache/upscaler/weights"
	defaultLogDir               = "~/.local/share/upscaler/logs"
	defaultHistoryDB            = "~/.local/share/upscaler/history.db"
	defaultJPEGQuality          = 95
	defaultUpscaleBinary        = "realesrgan-ncnn-vulkan"
	defaultFaceBinary           = "gfpgan-ncnn-vulkan"
	defaultDenoiseBinary        = "swin2sr-ncnn-vulkan"
	defaultEngineTimeoutSeconds = 600
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WeightsDir: defaultWeightsDir,
			LogDir:     defaultLogDir,
			HistoryDB:  defaultHistoryDB,
		},
		Output: Output{
			JPEGQuality: defaultJPEGQuality,
		},
		Engine: Engine{
			UpscaleBinary:  defaultUpscaleBinary,
			FaceBinary:     defaultFaceBinary,
			DenoiseBinary:  defaultDenoiseBinary,
			TimeoutSeconds: defaultEngineTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
