// Command simplecsv converts a JSON or YAML list of flat records to CSV.
//
// Usage:
//
//	# Print CSV for a JSON file
//	simplecsv records.json
//
//	# Read YAML from stdin, semicolon separated, no BOM
//	cat records.yaml | simplecsv --input-format yaml --separator ";" --no-bom
//
//	# Label columns and write reports/My_Report.csv
//	simplecsv records.json --labels name=Name,age=Age --filename "My Report" --out-dir reports
//
//	# Load options from a YAML file
//	simplecsv records.json --config csv.yaml
package main

func main() {
	Execute()
}
