// flac2wav is a tool which converts FLAC files to WAV files.
package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"

	"github.com/waveflac/flac"
	"github.com/waveflac/flac/wave"
)

var cli struct {
	Input  string `arg:"" name:"input" help:"Input FLAC file." type:"existingfile"`
	Output string `arg:"" name:"output" help:"Output WAV file. Defaults to the input path with a .wav extension." optional:""`
	Force  bool   `short:"f" help:"Force overwrite if the output file already exists."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("flac2wav"),
		kong.Description("Decode a FLAC file to a WAV file."),
		kong.UsageOnError(),
	)

	if cli.Output == "" {
		cli.Output = pathutil.TrimExt(cli.Input) + ".wav"
	}
	if !cli.Force && osutil.Exists(cli.Output) {
		ctx.Fatalf("output file %q already exists; use -f to overwrite", cli.Output)
	}

	ctx.FatalIfErrorf(flac2wav(cli.Input, cli.Output))
}

// flac2wav decodes the FLAC file at inputPath and writes its audio to a WAV
// file at outputPath.
func flac2wav(inputPath, outputPath string) error {
	r, err := os.Open(inputPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	d := flac.NewDecoder(r)
	if err := d.DecodeMarker(); err != nil {
		return errors.WithStack(err)
	}
	for d.State() != flac.StateHasMetadata {
		if err := d.DecodeMetadata(); err != nil {
			return errors.WithStack(err)
		}
	}
	si := d.StreamInfo()
	log.Printf("flac stream info: min_block_size=%d max_block_size=%d min_frame_size=%d max_frame_size=%d sample_rate=%d channel_count=%d sample_bit_size=%d sample_count=%d",
		si.BlockSizeMin, si.BlockSizeMax, si.FrameSizeMin, si.FrameSizeMax, si.SampleRate, si.NChannels, si.BitsPerSample, si.SampleCount)

	w, err := os.Create(outputPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	enc, err := wave.NewEncoder(w, int(si.SampleRate), int(si.BitsPerSample), int(si.NChannels))
	if err != nil {
		return errors.WithStack(err)
	}
	defer enc.Close()

	for d.State() != flac.StateComplete {
		if err := d.DecodeAudio(); err != nil {
			return errors.WithStack(err)
		}
		if d.State() == flac.StateComplete {
			break
		}
		if d.SampleRate() != si.SampleRate {
			return errors.Errorf("frame sample rate %d does not match stream sample rate %d; variable sample rate is not supported", d.SampleRate(), si.SampleRate)
		}
		if err := enc.WriteBlock(d.Channels(), int(d.BlockSize())); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
