// Package domain models processed sonic-anemometer records and the quality
// checks run over a yearly set of them.
//
// # Data Source
//
// The station software writes one processed file per day into monthly
// directories (processed/YYYYMM). The collect step concatenates a year of
// them into a single combined CSV that keeps only the first file's header.
// Every data line is one averaging block.
//
// # Record Layout
//
// Fields are positional and comma separated. Only seven are used:
//
//	 0  time stamp, "YYYY-MM-DD HH:MM:SS"
//	 3  horizontal wind speed (m/s)
//	 7  provenance wind direction (degrees)
//	11  stability parameter z/L (φ)
//	20  turbulent kinetic energy (m²/s²)
//	21  friction velocity u* (m/s)
//	24  sensible heat flux H0 (W/m²)
//
// [DefaultLayout] pins this mapping. A line is accepted only when all seven
// fields parse and pass their range checks; anything else is dropped whole.
//
// Invalid time stamps are written by the logger as 1970-01-01 00:00:00, so a
// time stamp must be strictly after the Unix epoch.
//
// # Checks
//
// Timing: the averaging time is inferred as the smallest positive gap between
// consecutive records (read order, not sorted). Gaps that are not positive are
// glitches; gaps that are not a multiple of the averaging time are irregular.
//
// Directions: a 360-bin histogram of wind direction exposes blind spots, and a
// per-direction friction velocity index hints at nearby obstructions.
//
// Heat flux: H0 outside [-200, 1600] W/m² is counted as an outlier and
// excluded from the censored and monthly means.
//
// # Sentinels
//
// Bins and months with no supporting data hold [NoData] (-9999.9), the value
// the station reports already use for missing data.
package domain
