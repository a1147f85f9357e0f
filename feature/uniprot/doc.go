// Package uniprot implements resolve.Lookup on top of the UniProt REST API.
//
// Search queries /uniprotkb/search. An Accession field search becomes the
// query accession:<id>, any other field a free-text query. The primary
// accessions of the results are the record handles.
//
// Summary reads /uniprotkb/<accession>.json and reports the primary accession
// as the canonical id, the entry type (Swiss-Prot or TrEMBL) as the source and
// every uniProtKBCrossReferences entry as a CrossRef, so the resolver can pick
// the EMBL (or any other) cross reference when configured to.
package uniprot
