// Package config loads findex settings.
//
// Sources are applied in order, later ones winning:
//
//  1. DefaultConfig
//  2. ~/.findex/config.yaml (or the file named by --config)
//  3. .env in the working directory (never overrides variables already set)
//  4. FINDEX_DB_PATH, FINDEX_MODEL_PATH, FINDEX_LOG_LEVEL, FINDEX_TOP_K,
//     FINDEX_WORKERS, FINDEX_CACHE_SIZE and NO_COLOR
//
// Command-line flags are applied by the cmd package after Load returns.
//
// Example config.yaml:
//
//	db_path: ~/.findex/findex.db
//	model_path: ~/models/cc.en.300.vec.gz
//	log_level: info
//	top_k: 10
//	workers: 4
package config
