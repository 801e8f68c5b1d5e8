/*
Package config resolves the configuration of an mjc run.

	+----------+   +-----------+   +------+   +-----+   +-------+
	| defaults |-->| .mjc.yaml |-->| .env |-->| env |-->| flags |
	+----------+   | .mjc.hcl  |   +------+   +-----+   +-------+
	               | .mjc.json |
	               +-----------+

Each layer only overrides the fields it sets. The result is validated once and
passed by value into the rest of the program; nothing below cmd/ reads the
environment.

🔧 Recognized keys (file / environment):

	source_root  MJC_SRC          directory scanned for sources (default "src")
	lib_root     MJC_LIB          directory populated with copies (default "lib")
	source_ext   MJC_SRC_EXT      extension of source files (default ".js")
	dest_ext     MJC_DST_EXT      extension written instead (default ".mjs")
	exclude      MJC_EXCLUDE      globs of sources to skip
	concurrency  MJC_CONCURRENCY  copies in flight, 0 for no limit
	on_failure   MJC_ON_FAILURE   "fail" or "warn"
	-            MJC_CWD          working directory

HCL files can read the environment through the env object:

	lib_root = "${env.OUT_DIR}/esm"
*/
package config
