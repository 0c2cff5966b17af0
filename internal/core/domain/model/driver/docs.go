// Package driver provides the Driver aggregate root: identity, vehicle,
// position, operational status, account approval and the stored optimised route.
package driver
