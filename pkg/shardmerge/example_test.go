package shardmerge_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/shardmerge/pkg/safetensors"
	"github.com/bft-labs/shardmerge/pkg/shardmerge"
)

// ExampleRun merges a two-shard checkpoint.
func ExampleRun() {
	dir, err := os.MkdirTemp("", "shardmerge-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	for i, name := range []string{"model-00001-of-00002.safetensors", "model-00002-of-00002.safetensors"} {
		buf, err := safetensors.Encode(map[string]safetensors.Tensor{
			fmt.Sprintf("layer.%d.weight", i): {DType: safetensors.F16, Shape: []int64{2}, Data: make([]byte, 4)},
		}, nil)
		if err != nil {
			fmt.Println(err)
			return
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf, 0o644); err != nil {
			fmt.Println(err)
			return
		}
	}

	report, err := shardmerge.Run(context.Background(), shardmerge.Config{
		FirstShard: filepath.Join(dir, "model-00001-of-00002.safetensors"),
		OutputPath: filepath.Join(dir, "model.safetensors"),
		Purge:      true,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("merged %d shards into %d tensors\n", report.Loaded, report.Tensors)
	// Output: merged 2 shards into 2 tensors
}

// Example_withEventHandler demonstrates how to receive merge events.
func Example_withEventHandler() {
	handler := &progressPrinter{}

	_, err := shardmerge.Run(context.Background(), shardmerge.Config{
		FirstShard: "/path/to/model-00001-of-00003.safetensors",
		OutputPath: "/path/to/model.safetensors",
	}, shardmerge.WithEventHandler(handler))
	if err != nil {
		fmt.Println("merge failed")
	}
}

// progressPrinter implements shardmerge.EventHandler for progress output.
type progressPrinter struct {
	shardmerge.BaseEventHandler // Embed for no-op defaults
}

func (p *progressPrinter) OnShardLoaded(event shardmerge.ShardLoadedEvent) {
	fmt.Printf("loaded %s (%d tensors)\n", event.Shard.Name, event.Tensors)
}

func (p *progressPrinter) OnShardFailed(event shardmerge.ShardFailedEvent) {
	fmt.Printf("skipped %s: %v\n", event.Shard.Name, event.Error)
}
