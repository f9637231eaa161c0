// Package reservation bridges reserved-instance utilization from AWS Cost
// Explorer into a CloudWatch custom metric.
//
// One invocation runs three phases in order, stopping at the first failure:
//
//	querying    build the Cost Explorer query and execute it
//	extracting  read the last period's total utilization percentage
//	publishing  write that value as a single CloudWatch datum
//
// Nothing is cached or shared between invocations apart from the SDK
// clients, so a Bridge may serve concurrent invocations.
package reservation
