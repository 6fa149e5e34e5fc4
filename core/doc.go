// Package core contains the domain model for IPH incident reports: the
// Event entity and its link rows, the reference catalogs, and the pure
// business rule engine that governs which motive categories and detainee
// combinations are legal for each event type.
//
// Nothing in this package performs I/O. Persistence lives in the storage
// package and orchestration in the service package.
package core
