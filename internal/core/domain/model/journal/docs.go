// Package journal holds the append-only records produced by dispatch operations:
// notifications, admin-driver messages, account audit entries and driver status logs.
package journal
