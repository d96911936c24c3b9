// Package shardmerge merges a numbered set of SafeTensors shards into one
// SafeTensors file.
//
// Shards follow the "<prefix>-NNNNN-of-NNNNN<ext>" naming convention. Given
// the first shard, every contiguous sibling in the same directory is loaded
// in order and folded into one tensor mapping; on a name collision the later
// shard wins. The result is written atomically to the output path.
//
// # Basic Usage
//
//	report, err := shardmerge.Run(ctx, shardmerge.Config{
//	    FirstShard: "/models/unet/diffusion_pytorch_model-00001-of-00003.safetensors",
//	    OutputPath: "/models/unet/diffusion_pytorch_model.safetensors",
//	    Purge:      true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Tensors, "tensors written")
//
// # Failure Policy
//
// A shard that cannot be loaded is logged, recorded in [Report.Failures] and
// skipped, so the output may be incomplete; check [Report.Complete]. Set
// [Config.Strict] to abort on the first failure with [ErrShardLoad] instead.
//
// Terminal failures are reported with sentinel errors that can be checked
// with errors.Is: [ErrNoShards], [ErrOutputExists], [ErrNothingMerged],
// [ErrWrite] and [ErrShardLoad].
//
// # Memory
//
// Shards are memory-mapped. With [Config.Purge] each shard's tensors are
// copied out and the shard is unmapped before the next one is opened, which
// bounds resident memory to the merged model plus one shard. Without purge
// the merged model references the mapped shards directly and all of them
// stay mapped until the output has been written.
//
// # Event Handling
//
// To observe progress, implement [EventHandler] and pass it via
// [WithEventHandler]. Events are called synchronously from the merging
// goroutine.
package shardmerge
