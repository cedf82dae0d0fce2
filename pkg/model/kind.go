// Copyright 2026 The kubectl-smart Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model holds the uniform resource model that collectors and
// parsers produce and every downstream component (graph, scoring,
// forecaster) consumes.
package model

// ResourceKind is the closed set of Kubernetes kinds kubectl-smart
// understands. Anything else is dropped by the parsers.
type ResourceKind string

const (
	KindPod                ResourceKind = "Pod"
	KindDeployment         ResourceKind = "Deployment"
	KindReplicaSet         ResourceKind = "ReplicaSet"
	KindStatefulSet        ResourceKind = "StatefulSet"
	KindDaemonSet          ResourceKind = "DaemonSet"
	KindJob                ResourceKind = "Job"
	KindCronJob            ResourceKind = "CronJob"
	KindService            ResourceKind = "Service"
	KindIngress            ResourceKind = "Ingress"
	KindConfigMap          ResourceKind = "ConfigMap"
	KindSecret             ResourceKind = "Secret"
	KindPVC                ResourceKind = "PersistentVolumeClaim"
	KindPV                 ResourceKind = "PersistentVolume"
	KindStorageClass       ResourceKind = "StorageClass"
	KindNode               ResourceKind = "Node"
	KindNamespace          ResourceKind = "Namespace"
	KindServiceAccount     ResourceKind = "ServiceAccount"
	KindRole               ResourceKind = "Role"
	KindRoleBinding        ResourceKind = "RoleBinding"
	KindClusterRole        ResourceKind = "ClusterRole"
	KindClusterRoleBinding ResourceKind = "ClusterRoleBinding"
	KindNetworkPolicy      ResourceKind = "NetworkPolicy"
	KindHPA                ResourceKind = "HorizontalPodAutoscaler"
	KindVPA                ResourceKind = "VerticalPodAutoscaler"
	KindEndpoints          ResourceKind = "Endpoints"
	KindEvent              ResourceKind = "Event"
	KindLogAnalysis        ResourceKind = "LogAnalysis"
)

// knownKinds is the membership set backing IsKnownKind.
var knownKinds = map[ResourceKind]bool{
	KindPod: true, KindDeployment: true, KindReplicaSet: true,
	KindStatefulSet: true, KindDaemonSet: true, KindJob: true,
	KindCronJob: true, KindService: true, KindIngress: true,
	KindConfigMap: true, KindSecret: true, KindPVC: true, KindPV: true,
	KindStorageClass: true, KindNode: true, KindNamespace: true,
	KindServiceAccount: true, KindRole: true, KindRoleBinding: true,
	KindClusterRole: true, KindClusterRoleBinding: true,
	KindNetworkPolicy: true, KindHPA: true, KindVPA: true,
	KindEndpoints: true, KindEvent: true, KindLogAnalysis: true,
}

// IsKnownKind reports whether kind is part of the closed enumeration.
// Parsers use this to silently drop unknown kinds instead of failing.
func IsKnownKind(kind string) bool {
	return knownKinds[ResourceKind(kind)]
}

// clusterScoped lists kinds that never carry a namespace, used when
// deriving FullName.
var clusterScoped = map[ResourceKind]bool{
	KindNode: true, KindNamespace: true, KindPV: true,
	KindStorageClass: true, KindClusterRole: true, KindClusterRoleBinding: true,
}

// IsClusterScoped reports whether kind is cluster-scoped.
func IsClusterScoped(kind ResourceKind) bool {
	return clusterScoped[kind]
}
