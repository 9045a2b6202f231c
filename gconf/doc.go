/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Every extension keeps a single configuration object stored under the
"_c:<package>" key. The value is loaded from the "conf" section of the
genesis file and read back by the extension when processing transactions.
*/
package gconf
