package main

/*
#include <stdint.h>
*/
import "C"

// set_log_level sets the minimum level that reaches the current sink
// (discarding by default until log_to_file switches to the file sink).
// Any value outside 0..5 is treated as off (spec §6).
//
//export set_log_level
func set_log_level(level C.int) {
	initLibrary()
	logger.SetLevel(int(level))
}

// log_to_file switches the sink to the fixed-name log file in the
// working directory at the given level.
//
//export log_to_file
func log_to_file(level C.int) {
	initLibrary()
	if err := logger.SetFile(int(level)); err != nil {
		logger.Warn("log_to_file failed", "error", err)
	}
}
