// cmd/hnfconv/convert.go
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/helios-forge/hnfconv/convert"
	"github.com/helios-forge/hnfconv/hints"
	"github.com/helios-forge/hnfconv/hnf"
	"github.com/helios-forge/hnfconv/htf"
	"github.com/helios-forge/hnfconv/mapping"
	"github.com/helios-forge/hnfconv/tensorsrc"
)

var (
	shardPath  string
	outPath    string
	archLabel  string
	numLayers  int
	hiddenSize int
	vocabSize  int
	quantTag   string
)

// convertCmd is a minimal demonstration entrypoint: a single text
// model, a one-domain text tokenizer bundle and a fixed set of
// hyperparameter defaults. Architecture-specific tensor-name mapping
// tables and a full argument surface remain out of scope (spec.md §1);
// real deployments call the convert package directly with their own
// mapping.Mapper.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a single safetensors shard into an HNFv9 container",
	RunE: func(cmd *cobra.Command, args []string) error {
		shard, err := tensorsrc.Open(shardPath)
		if err != nil {
			return err
		}

		mapper := mapping.NewDefaultMapper(archLabel, numLayers, vocabSize, hiddenSize)
		models := []convert.ModelInput{
			{Slot: hnf.SlotTextWeights, Shard: shard, Mapper: mapper},
		}

		textConfig := htf.TextDomainConfig{
			VocabSize: uint32(vocabSize),
			Encoding:  htf.EncodingBPE,
			ByteLevel: true,
		}
		domains := []htf.DomainSpec{
			{Type: htf.DomainText, IsPrimary: true, Payload: textConfig.Bytes(), VocabSize: uint32(vocabSize)},
		}

		tree := hints.ExecutionHints{
			Text: &hints.TextHints{
				Architecture:  archLabel,
				NumLayers:     uint32(numLayers),
				HiddenSize:    uint32(hiddenSize),
				VocabSize:     uint32(vocabSize),
				MaxPositions:  4096,
				NormEps:       1e-5,
				AttentionType: "gqa",
				QKVLayout:     "separate",
				MLPType:       "gated",
				Activation:    "silu",
				NormType:      "rmsnorm",
			},
		}

		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()

		stats, err := convert.Convert(out, models, domains, tree, quantTag)
		if err != nil {
			return err
		}

		logrus.Infof("wrote %s: %d tensors written, %d skipped", outPath, stats.TensorsWritten, stats.TensorsSkipped)

		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&shardPath, "shard", "", "path to a single safetensors shard (required)")
	convertCmd.Flags().StringVar(&outPath, "out", "model.hnf", "output HNFv9 container path")
	convertCmd.Flags().StringVar(&archLabel, "arch", "generic", "architecture label, e.g. llama3, qwen2")
	convertCmd.Flags().IntVar(&numLayers, "layers", 0, "number of transformer layers")
	convertCmd.Flags().IntVar(&hiddenSize, "hidden", 0, "hidden dimension size")
	convertCmd.Flags().IntVar(&vocabSize, "vocab", 0, "tokenizer vocabulary size")
	convertCmd.Flags().StringVar(&quantTag, "quant", "HQ4K", "default quantization format (FP16, HQ4K, HQ5K)")

	_ = convertCmd.MarkFlagRequired("shard")
}
