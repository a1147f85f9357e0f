// Package entrez implements resolve.Lookup on top of the NCBI E-utilities.
//
// Two endpoints are used:
//
//   - esearch.fcgi: term=<identifier>[<field>], retmax=1, retmode=json.
//     The idlist of the response holds the record handles (UIDs).
//   - esummary.fcgi: id=<uid>, retmode=json. The document summary exposes
//     accessionversion, sourcedb and extra (a pipe-delimited list of the
//     record's identifiers in other databases).
//
// Responses are read with gjson. Transport failures, 429 and 5xx statuses are
// transient. Other statuses, an esearch ERROR field and a 200 body that cannot
// be understood are not.
//
// Set an API key to raise the NCBI budget from 3 to 10 requests per second; the
// rate gate itself lives in core/resolve.
package entrez
