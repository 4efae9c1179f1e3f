// Package projection renders process snapshots as JSON documents for
// scripting front ends.
//
// The projection is lossy. Process, parent, user and group ids are written
// as signed 32-bit integers using Go's wrapping conversion, so ids at or
// above 1<<31 come out negative. Overflowed reports which fields of a
// snapshot were affected. Absent optional ids are written as 0 and
// paired with a false "<field>_is_valid" flag; the flag, not the value,
// says whether the id is known.
//
// Document layout:
//
//	{
//	  "name": "bash",
//	  "executable_file": {"filename": "bash", "directory": "/usr/bin"},
//	  "process_id": 4242,
//	  "parent_process_id": 1,
//	  "user_id": 1000, "user_id_is_valid": true,
//	  "group_id": 0, "group_id_is_valid": false,
//	  "effective_user_id": 1000, "effective_user_id_is_valid": true,
//	  "effective_group_id": 0, "effective_group_id_is_valid": false
//	}
package projection
