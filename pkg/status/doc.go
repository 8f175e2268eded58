/*
Package status performs and records the file system side effects of a run.

	            +-------------+
	            |   Status    |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +-----+-----+
	|  Copies   |           |  Sheets   |
	| (tracked) |           | (atomic)  |
	+-----------+           +-----------+

🎯 Purpose:
- Copies source files to their renamed targets
- Writes the output sheet
- Tracks every copy so a failed run can be undone

🔄 Flow:
1. The rename stage asks for each copy with CopyFileAtomic
2. Existing targets are backed up before they are replaced
3. On failure the runner calls Rollback, on success Commit

⚡ Guarantees:
  - Every write goes through a uniquely named temporary file in the target
    directory and is renamed into place, so readers never see half a file
  - Temporary files are removed on every error path
  - Rollback removes new copies and restores overwritten ones

🔍 Example:

	mgr := status.New(zerolog.Ctx(ctx))
	if _, err := mgr.CopyFileAtomic(ctx, "photos/a.jpg", "out/1_photo.jpg"); err != nil {
		_ = mgr.Rollback(ctx)
		return err
	}
	return mgr.Commit(ctx)
*/
package status
