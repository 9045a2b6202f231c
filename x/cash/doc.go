/*
Package cash keeps the native balance of every account.

There is only one asset. A wallet holds a single unsigned balance and may
never go below zero or overflow. Thus, this implementation is referred to
as cash. Simple and safe.

Other extensions move value through the Controller, and the FeeDecorator
charges transaction fees to the collector configured via gconf.
*/
package cash
