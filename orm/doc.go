/*
Package orm splits the state into buckets. A bucket owns every key starting
with its name followed by a colon and holds models of a single type,
addressed by a primary key.
*/
package orm
