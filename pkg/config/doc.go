/*
Package config loads and validates the description of a formedit run.

	            +-------------+
	            |   Config    |
	            |  (one run)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   JSON   | |   YAML   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Reads a config file and picks a parser by extension
- Decodes edit instructions into typed directives up front
- Checks that every key needed by the enabled stages is present

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax (unknown keys are rejected)
3. Validates required keys
4. Hands the validated config to the operation package

📝 Keys:
The same camelCase keys are used in every format:

	sourceSheet, targetSheet             required
	renameFiles, aliasFields, deleteFields  required booleans
	sourceFileDir, targetFileDir          optional, default current directory
	filenameField, renameTemplate,
	renameFields                          required when renameFiles is true
	overwriteFiles                        optional, default false
	aliases                               required when aliasFields is true
	deleteFlag                            required when deleteFields is true

🔍 Example:

	{
		"sourceSheet": "forms.tsv",
		"targetSheet": "forms-out.tsv",
		"renameFiles": true,
		"sourceFileDir": "photos/",
		"targetFileDir": "renamed/",
		"filenameField": "photo",
		"renameTemplate": "${id}_${title}",
		"renameFields": {
			"id": {},
			"title": {"truncate": " (", "replace": [" ", "_"], "remove": ","}
		},
		"aliasFields": true,
		"aliases": {"photo": "image"},
		"deleteFields": true,
		"deleteFlag": "_tmp"
	}
*/
package config
