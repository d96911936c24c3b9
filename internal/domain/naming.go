package domain

import "strings"

// ModelName derives the merged model's base name from a shard filename:
// everything before the first "-NNNNN-of-NNNNN" field, or the name without
// its extension when there is no such field.
//
//	"model-00001-of-00003.safetensors"      -> "model"
//	"model-00001-of-00003.fp16.safetensors" -> "model"
//	"model.safetensors"                     -> "model"
func ModelName(filename, ext string) string {
	if m := shardSuffix.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	return strings.TrimSuffix(filename, ext)
}

// OutputFileName appends ext to name unless name already ends with it.
func OutputFileName(name, ext string) string {
	if ext != "" && strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}
