package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Fixed decoding parameters, matching what the rest of the pipeline
// is tuned for (16 kHz mono input).
const beamSize = 5

// whisperCpp drives the whisper.cpp command-line frontend. Building
// one verifies the binary and the model file up front so that a
// failure surfaces at load time, not on the first transcription.
type whisperCpp struct {
	binPath   string
	modelPath string
	vadModel  string // empty when no VAD model is installed
	noGPU     bool
}

// Options selects the model and how it runs. Model may be a bare name
// ("base.en") resolved against the model directory, or a path to a
// ggml model file.
type Options struct {
	Model       string
	Device      string // "cpu" disables GPU offload
	ComputeType string // "int8" prefers a q8_0 quantized model file
}

// ModelDir returns where bare model names are resolved. Overridable
// via SOUPAWHISPER_MODEL_DIR.
func ModelDir() string {
	if dir := os.Getenv("SOUPAWHISPER_MODEL_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "soupawhisper", "models")
}

// NewWhisperCpp constructs the engine, failing when the whisper-cli
// binary or the model file cannot be found.
func NewWhisperCpp(opts Options) (Engine, error) {
	binPath, err := exec.LookPath("whisper-cli")
	if err != nil {
		return nil, fmt.Errorf("whisper-cli not found in PATH (install whisper.cpp): %w", err)
	}

	modelPath, err := resolveModelPath(ModelDir(), opts.Model, opts.ComputeType)
	if err != nil {
		return nil, err
	}

	vadModel := filepath.Join(ModelDir(), "ggml-silero-v5.1.2.bin")
	if _, err := os.Stat(vadModel); err != nil {
		vadModel = ""
	}

	return &whisperCpp{
		binPath:   binPath,
		modelPath: modelPath,
		vadModel:  vadModel,
		noGPU:     strings.EqualFold(opts.Device, "cpu"),
	}, nil
}

// resolveModelPath maps a model name to a ggml file, preferring the
// q8_0 quantization when compute_type is int8.
func resolveModelPath(dir, model, computeType string) (string, error) {
	if strings.ContainsRune(model, os.PathSeparator) {
		if _, err := os.Stat(model); err != nil {
			return "", fmt.Errorf("model file %s: %w", model, err)
		}
		return model, nil
	}

	var candidates []string
	if strings.EqualFold(computeType, "int8") {
		candidates = append(candidates, filepath.Join(dir, "ggml-"+model+"-q8_0.bin"))
	}
	candidates = append(candidates, filepath.Join(dir, "ggml-"+model+".bin"))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("model %q not found (looked for %s)", model, strings.Join(candidates, ", "))
}

func (w *whisperCpp) Name() string { return "whisper.cpp" }

func (w *whisperCpp) Transcribe(ctx context.Context, wavPath string) ([]Segment, error) {
	// -oj writes <prefix>.json next to nothing else we care about.
	outPrefix := wavPath
	args := []string{
		"-m", w.modelPath,
		"-f", wavPath,
		"--beam-size", fmt.Sprint(beamSize),
		"-oj",
		"-of", outPrefix,
		"--no-prints",
	}
	if w.vadModel != "" {
		args = append(args, "--vad", "--vad-model", w.vadModel)
	}
	if w.noGPU {
		args = append(args, "--no-gpu")
	}

	cmd := exec.CommandContext(ctx, w.binPath, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("transcription aborted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("whisper-cli: %w: %s", err, firstLine(out))
	}

	jsonPath := outPrefix + ".json"
	defer os.Remove(jsonPath)
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("reading whisper output: %w", err)
	}
	return parseOutput(data)
}

// whisper.cpp JSON output: {"transcription": [{"offsets": {"from": ms,
// "to": ms}, "text": " ..."}, ...]}
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseOutput(data []byte) ([]Segment, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing whisper output: %w", err)
	}
	segments := make([]Segment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		segments = append(segments, Segment{
			Text:  t.Text,
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
		})
	}
	return segments, nil
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
